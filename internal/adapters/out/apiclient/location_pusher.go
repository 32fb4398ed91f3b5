// Package apiclient talks to the fulfillment HTTP API from a courier device.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 10 * time.Second

type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// LocationPusher sends courier positions to PUT /api/v1/couriers/:id/location.
type LocationPusher struct {
	client *resty.Client
}

func NewLocationPusher(baseURL, token string) *LocationPusher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetAuthToken(token).
		SetHeader("Accept", "application/json")
	return &LocationPusher{client: client}
}

func (p *LocationPusher) PushLocation(ctx context.Context, courierID kernel.UUID, location kernel.Location) error {
	var apiErr errorResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("id", courierID.String()).
		SetBody(locationRequest{Latitude: location.Lat(), Longitude: location.Lon()}).
		SetError(&apiErr).
		Put("/api/v1/couriers/{id}/location")
	if err != nil {
		return errs.NewRemoteFailureError("push location", err)
	}

	if resp.StatusCode() != http.StatusNoContent && resp.StatusCode() != http.StatusOK {
		cause := fmt.Errorf("status %d", resp.StatusCode())
		if apiErr.Message != "" {
			return errs.NewRemoteFailureErrorWithMessage("push location", apiErr.Message, cause)
		}
		return errs.NewRemoteFailureError("push location", cause)
	}
	return nil
}
