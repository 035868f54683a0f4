package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/ranchsync/internal/config"
	"github.com/imamik/ranchsync/internal/reconcile"
	"github.com/imamik/ranchsync/internal/resources"
)

var (
	// loadDocument loads a desired-state file (for testing injection).
	loadDocument = config.Load

	// applyDocument reconciles a document (for testing injection).
	applyDocument = func(ctx context.Context, api reconcile.API, doc *config.Document) (*reconcile.Result, error) {
		return resources.Apply(ctx, api, doc)
	}
)

// Apply reconciles the document in path against Rancher.
//
// The document is loaded and validated before any request is sent; an
// invalid document is reported as a failure without contacting Rancher.
func Apply(ctx context.Context, opts *Options, path string) error {
	if path == "" {
		path = config.DefaultDocumentFilename
	}

	doc, err := loadDocument(path)
	if err != nil {
		return fail(ctx, opts, err)
	}

	title := fmt.Sprintf("%s %s", doc.Kind, doc.Name)
	return run(ctx, opts, title, func(ctx context.Context, api resources.ActionAPI) (*reconcile.Result, error) {
		return applyDocument(ctx, api, doc)
	})
}
