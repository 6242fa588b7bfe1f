package cms

import (
	"encoding/json"
	"fmt"
)

// Entry is a CMS record as returned by the GraphQL API.
type Entry map[string]any

func (e Entry) ID() string { return e.str("id") }

func (e Entry) DocumentID() string { return e.str("documentId") }

func (e Entry) str(key string) string {
	switch v := e[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Decode converts the entry into a typed value.
func (e Entry) Decode(dst any) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

type PageInfo struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type Meta struct {
	Pagination *PageInfo `json:"pagination,omitempty"`
}

// Collection is the result of Find. Data is never nil.
type Collection struct {
	Data []Entry `json:"data"`
	Meta Meta    `json:"meta"`
}
