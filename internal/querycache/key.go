package querycache

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies a remote query family. Each has its own staleness window.
type Kind string

const (
	KindList   Kind = "list"
	KindSearch Kind = "search"
	KindDetail Kind = "detail"
	KindType   Kind = "type"
	KindTypes  Kind = "types"
)

// TTL returns how long a response of this kind stays fresh.
func (k Kind) TTL() time.Duration {
	switch k {
	case KindDetail, KindType:
		return 10 * time.Minute
	case KindTypes:
		return 30 * time.Minute
	default:
		return 5 * time.Minute
	}
}

// Key identifies one cached response.
type Key struct {
	Kind Kind
	Args []string
}

func ListKey(offset, limit int) Key {
	return Key{Kind: KindList, Args: []string{strconv.Itoa(offset), strconv.Itoa(limit)}}
}

// SearchKey normalizes the query so "Pika" and " pika" share an entry.
func SearchKey(query string) Key {
	return Key{Kind: KindSearch, Args: []string{strings.ToLower(strings.TrimSpace(query))}}
}

func DetailKey(id int) Key {
	return Key{Kind: KindDetail, Args: []string{strconv.Itoa(id)}}
}

func TypeKey(name string) Key {
	return Key{Kind: KindType, Args: []string{name}}
}

func TypesKey() Key {
	return Key{Kind: KindTypes}
}

// String is the flat form used for de-duplication and the backend tier.
func (k Key) String() string {
	if len(k.Args) == 0 {
		return string(k.Kind)
	}
	return string(k.Kind) + ":" + strings.Join(k.Args, ":")
}
