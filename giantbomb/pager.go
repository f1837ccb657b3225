package giantbomb

import (
	"fmt"
	"iter"
	"math"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/retroprice"
)

// Pager is a cursor over the items of a list resource.
//
// It follows the bufio.Scanner pattern:
//
//	p := c.Platforms(q)
//	for p.Next() {
//		item := p.Item()
//	}
//	if err := p.Err(); err != nil {
//		...
//	}
//
// A Pager is not safe for concurrent use, and cannot be restarted.
type Pager struct {
	c        *Client
	resource string
	q        Query

	fetched  int // results reported by the pages received so far, also the next offset.
	total    int // total results reported by the last page.
	requests int

	page []Item
	i    int // next item in page.

	item Item
	err  error
	done bool
}

// Next advances to the next item, requesting the next page if needed. It returns false
// at the end of the results or on error.
func (p *Pager) Next() bool {
	if p.err != nil || p.done {
		return false
	}
	for p.i >= len(p.page) {
		if p.done || (p.requests > 0 && p.fetched >= p.total) {
			p.done = true
			p.item = nil
			return false
		}
		if err := p.fetch(); err != nil {
			p.err = err
			p.item = nil
			return false
		}
	}
	item := p.page[p.i]
	p.page[p.i] = nil
	p.i++
	if err := normalize(item); err != nil {
		p.err = err
		p.item = nil
		return false
	}
	p.item = item
	return true
}

// Item returns the current item.
func (p *Pager) Item() Item { return p.item }

// Err returns the error that stopped the Pager, if any.
func (p *Pager) Err() error { return p.err }

// Requests returns the number of page requests issued so far.
func (p *Pager) Requests() int { return p.requests }

// All returns an iterator over the remaining items. On failure the last pair
// carries the error. Breaking out of the loop stops requesting pages.
func (p *Pager) All() iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for p.Next() {
			if !yield(p.Item(), nil) {
				return
			}
		}
		if err := p.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// fetch requests the page at the current offset.
func (p *Pager) fetch() error {
	addr := p.c.endpoint(p.resource) + "?" + p.q.Values(p.fetched, p.c.APIKey).Encode()
	url := retroprice.Redact(addr)

	p.requests++
	var page any
	if err := retroprice.GetJSON(p.c.HTTPClient, addr, &page); err != nil {
		return err
	}
	if err := apiStatus(page, url); err != nil {
		return err
	}

	total, err := count(page, "number_of_total_results", url)
	if err != nil {
		return err
	}
	n, err := count(page, "number_of_page_results", url)
	if err != nil {
		return err
	}
	items, err := results(page, url)
	if err != nil {
		return err
	}

	p.total = total
	p.fetched += n
	p.page, p.i = items, 0
	if n == 0 {
		// an empty page cannot move the offset forward.
		p.done = true
	}
	return nil
}

// apiStatus reports an error status in the envelope. Giant Bomb answers 1 for OK.
func apiStatus(page any, url string) error {
	status, err := jsonpath.Get("$.status_code", page)
	if err != nil {
		return nil // optional
	}
	if code, ok := status.(float64); ok && code != 1 {
		msg, _ := jsonpath.Get("$.error", page)
		return &retroprice.TransportError{URL: url, Err: fmt.Errorf("api error %v: %v", code, msg)}
	}
	return nil
}

// count reads a non negative integer field of the envelope.
func count(page any, field, url string) (int, error) {
	v, err := jsonpath.Get("$."+field, page)
	if err != nil {
		return 0, &retroprice.SchemaError{URL: url, Field: field, Err: err}
	}
	f, ok := v.(float64)
	if !ok || f < 0 || f != math.Trunc(f) {
		return 0, &retroprice.SchemaError{URL: url, Field: field, Err: fmt.Errorf("not a count: %v", v)}
	}
	return int(f), nil
}

// results reads the items of the envelope.
func results(page any, url string) ([]Item, error) {
	v, err := jsonpath.Get("$.results", page)
	if err != nil {
		return nil, &retroprice.SchemaError{URL: url, Field: "results", Err: err}
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &retroprice.SchemaError{URL: url, Field: "results", Err: fmt.Errorf("not a list: %T", v)}
	}
	items := make([]Item, 0, len(list))
	for i, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, &retroprice.SchemaError{URL: url, Field: fmt.Sprintf("results[%d]", i), Err: fmt.Errorf("not an object: %T", e)}
		}
		items = append(items, Item(m))
	}
	return items, nil
}
