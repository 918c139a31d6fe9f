package payload

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

type (
	// ListQuery carries optional paging parameters taken from the query
	// string. Handlers clamp Limit to their own maximum.
	ListQuery struct {
		Limit  int `form:"limit"`
		Offset int `form:"offset"`
	}
	ListResp[T any] struct {
		Rows  []T   `json:"rows"`
		Count int64 `json:"count"`
	}
)
