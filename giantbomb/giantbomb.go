// Package giantbomb lists catalog items from the Giant Bomb API.
//
// List resources are paged with an offset: each response reports the total number of
// matching results and the number of results in that page. A Pager walks through
// them, requesting pages only when the consumer asks for more items.
//
//	c := giantbomb.NewClient(giantbomb.DefaultBaseURL, apiKey)
//	for item, err := range c.Platforms(giantbomb.Query{Sort: "release_date:asc"}).All() {
//		...
//	}
package giantbomb

import (
	"net/http"
	"strings"
)

// DefaultBaseURL is the Giant Bomb API root.
const DefaultBaseURL = "https://www.giantbomb.com/api"

// Client holds the connection information to the API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client // http.DefaultClient when nil.
}

// NewClient returns a Client for the API at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{BaseURL: baseURL, APIKey: apiKey}
}

// List returns a Pager over the items of resource matching q.
//
// No request is sent until the first call to Pager.Next. The Pager works on a copy of
// q: changing q afterwards does not change the pages it requests.
func (c *Client) List(resource string, q Query) *Pager {
	return &Pager{c: c, resource: resource, q: q.clone()}
}

// Platforms returns a Pager over the platforms matching q.
func (c *Client) Platforms(q Query) *Pager { return c.List("platforms", q) }

// endpoint returns the address of the resource without parameters.
func (c *Client) endpoint(resource string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/" + resource + "/"
}
