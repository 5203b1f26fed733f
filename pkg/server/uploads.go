package server

import (
	"mime"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	PreviewImage = "image"
	PreviewPDF   = "pdf"
	PreviewVideo = "video"
	PreviewFile  = "file"
)

// previewKind picks how a document upload is previewed from its media type.
func previewKind(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return PreviewImage
	case mediaType == "application/pdf":
		return PreviewPDF
	case strings.HasPrefix(mediaType, "video/"):
		return PreviewVideo
	}

	return PreviewFile
}

// sniffContentType falls back to the file contents when the client sent no
// usable type.
func sniffContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}

	f, err := header.Open()
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := f.Read(buf)

	return http.DetectContentType(buf[:n])
}

func (s *Server) handleUploadPreview(g *gin.Context) {
	form, err := g.MultipartForm()
	if err != nil {
		g.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "Expected a multipart upload."})
		return
	}

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	previews := []UploadPreview{}
	index := 0
	for _, field := range fields {
		for _, header := range form.File[field] {
			ct := sniffContentType(header)
			previews = append(previews, UploadPreview{
				Index:       index,
				Name:        header.Filename,
				Size:        header.Size,
				ContentType: ct,
				Kind:        previewKind(ct),
			})
			index++
		}
	}

	g.JSON(http.StatusOK, previews)
}
