package flat

import "net/url"

// Values adapts url.Values to Map. Get returns the first value of a key.
type Values url.Values

var _ Map = Values(nil)

func (v Values) Add(key, value string) {
	url.Values(v).Add(key, value)
}

func (v Values) Get(key string) (string, bool) {
	vs := v[key]
	if len(vs) == 0 {
		return "", false
	}

	return vs[0], true
}
