package api

import (
	"github.com/spf13/cast"
)

// FlexID decodes identifiers the backend sends either as JSON numbers or strings.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*id = ""
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return err
	}
	*id = FlexID(s)
	return nil
}

func (id FlexID) String() string {
	return string(id)
}
