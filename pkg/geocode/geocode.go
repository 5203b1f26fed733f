// Package geocode resolves coordinates to a city name through a
// Nominatim compatible reverse geocoding service.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ataboo/go-furglo-web/pkg/common"
	"github.com/friendsofgo/errors"
	"github.com/sirupsen/logrus"
)

const userAgent = "go-furglo-web/1.0"

var (
	ErrNoAddress = errors.New("no location data received")
	ErrNoCity    = errors.New("could not determine city from coordinates")
)

type Place struct {
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label is the value written into the city field.
func (p Place) Label() string {
	if p.Country == "" {
		return p.City
	}

	return fmt.Sprintf("%s, %s", p.City, p.Country)
}

type address struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	County  string `json:"county"`
	Country string `json:"country"`
}

type reverseResponse struct {
	Address *address `json:"address"`
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        logrus.FieldLogger
}

func New(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	if baseURL == "" {
		baseURL = common.DefaultGeocoderBaseURL
	}

	if timeout <= 0 {
		timeout = common.DefaultAPITimeout
	}

	if logger == nil {
		logger = common.NopLogger()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		log:        logger.WithField("component", "geocode"),
	}
}

func (c *Client) Reverse(ctx context.Context, lat float64, lon float64) (*Place, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, errors.Errorf("coordinates out of range: %f, %f", lat, lon)
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("zoom", "10")
	query.Set("addressdetails", "1")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build reverse geocode request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("reverse geocode request failed")
		return nil, errors.Wrap(err, "reverse geocode request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to decode reverse geocode response")
	}

	if body.Address == nil {
		return nil, ErrNoAddress
	}

	city := firstNonEmpty(body.Address.City, body.Address.Town, body.Address.Village, body.Address.County)
	if city == "" {
		return nil, ErrNoCity
	}

	c.log.WithFields(logrus.Fields{"city": city, "country": body.Address.Country}).Debug("location resolved")

	return &Place{
		City:      city,
		Country:   body.Address.Country,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
