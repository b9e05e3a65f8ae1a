package dev

import (
	"time"

	"github.com/nu7hatch/gouuid"
)

// Error is a structured report persisted to the devops index so failures in
// background projections are queryable after the fact.
type Error struct {
	Time      time.Time              `json:"time"`
	Component string                 `json:"component"`
	Name      string                 `json:"name"`
	Error     string                 `json:"error"`
	Extra     map[string]interface{} `json:"extra"`

	id string
}

func (e Error) Slug() string {
	return e.id
}

func NewError(component, name string, err error, extra map[string]interface{}) Error {
	u, _ := uuid.NewV4()

	return Error{
		Time:      time.Now(),
		Component: component,
		Name:      name,
		Error:     err.Error(),
		Extra:     extra,
		id:        u.String(),
	}
}
