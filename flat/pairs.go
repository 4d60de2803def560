package flat

import (
	"errors"
	"net/url"
	"strings"
)

// Map is the container a codec writes into and reads from.
type Map interface {
	// Add appends value under key, keeping any earlier values of the same key.
	Add(key, value string)
	// Get returns the first value stored under key.
	Get(key string) (string, bool)
}

// Pair is a single key/value entry.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an insertion ordered multi-map. The zero value is empty and ready to use.
type Pairs struct {
	items []Pair
}

var _ Map = (*Pairs)(nil)

// NewPairs creates an empty Pairs with room for n entries.
func NewPairs(n int) *Pairs {
	return &Pairs{items: make([]Pair, 0, n)}
}

func (p *Pairs) Add(key, value string) {
	p.items = append(p.items, Pair{Key: key, Value: value})
}

func (p *Pairs) Get(key string) (string, bool) {
	for _, it := range p.items {
		if it.Key == key {
			return it.Value, true
		}
	}

	return "", false
}

// Len returns the number of entries, duplicates included.
func (p *Pairs) Len() int {
	return len(p.items)
}

// All returns a copy of the entries in insertion order.
func (p *Pairs) All() []Pair {
	return append([]Pair(nil), p.items...)
}

// Keys returns the keys in insertion order, duplicates included.
func (p *Pairs) Keys() []string {
	keys := make([]string, len(p.items))
	for i, it := range p.items {
		keys[i] = it.Key
	}

	return keys
}

// Values copies the entries into a url.Values.
func (p *Pairs) Values() url.Values {
	values := make(url.Values, len(p.items))
	for _, it := range p.items {
		values.Add(it.Key, it.Value)
	}

	return values
}

// Encode renders the entries as a query string in insertion order.
// Unlike url.Values.Encode the keys are not sorted.
func (p *Pairs) Encode() string {
	var sb strings.Builder
	for i, it := range p.items {
		if i > 0 {
			sb.WriteByte('&')
		}

		sb.WriteString(url.QueryEscape(it.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(it.Value))
	}

	return sb.String()
}

var errSemicolon = errors.New("invalid semicolon separator in query")

// ParseQuery parses a query string keeping the order of its entries.
// Like url.ParseQuery, entries are separated by "&" only: an entry containing ";" or a
// malformed escape produces an error.
func ParseQuery(query string) (*Pairs, error) {
	p := &Pairs{}
	for query != "" {
		var entry string
		entry, query, _ = strings.Cut(query, "&")
		if entry == "" {
			continue
		}

		if strings.Contains(entry, ";") {
			return nil, errSemicolon
		}

		key, value, _ := strings.Cut(entry, "=")

		key, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}

		value, err = url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}

		p.Add(key, value)
	}

	return p, nil
}
