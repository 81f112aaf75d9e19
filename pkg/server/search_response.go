package server

import (
	"github.com/matst80/slask-cars/pkg/derive"
	"github.com/matst80/slask-cars/pkg/urlsync"
)

type ViewResponse struct {
	derive.View
	Location   string              `json:"location"`
	Labels     urlsync.Labels      `json:"labels"`
	Navigation *urlsync.Navigation `json:"navigation,omitempty"`
}
