package repository

import (
	"context"
	"net/url"
	"strconv"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
)

// query collects non-empty parameters in the shape the backend expects.
type query url.Values

func newQuery() query { return query{} }

func (q query) str(key, value string) query {
	if value != "" {
		url.Values(q).Set(key, value)
	}
	return q
}

func (q query) num(key string, value int) query {
	if value > 0 {
		url.Values(q).Set(key, strconv.Itoa(value))
	}
	return q
}

func (q query) float(key string, value float64) query {
	if value > 0 {
		url.Values(q).Set(key, strconv.FormatFloat(value, 'f', -1, 64))
	}
	return q
}

func (q query) boolPtr(key string, value *bool) query {
	if value != nil {
		url.Values(q).Set(key, strconv.FormatBool(*value))
	}
	return q
}

func (q query) values() url.Values { return url.Values(q) }

func get[T any](ctx context.Context, c *apiclient.Client, path string, q query) (*models.Envelope[T], error) {
	var env models.Envelope[T]
	if _, err := c.Get(ctx, path, q.values(), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func send[T any](ctx context.Context, c *apiclient.Client, method, path string, body interface{}) (*models.Envelope[T], error) {
	var env models.Envelope[T]
	if _, err := c.Do(ctx, method, path, nil, body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func escape(id string) string { return url.PathEscape(id) }
