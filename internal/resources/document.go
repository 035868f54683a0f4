package resources

import (
	"github.com/imamik/ranchsync/internal/config"
	"github.com/imamik/ranchsync/internal/reconcile"
)

// checkDocument validates doc for the expected kind and returns its presence.
// Nothing is sent to Rancher when it fails.
func checkDocument(doc *config.Document, kind config.Kind) (reconcile.Presence, error) {
	if doc == nil {
		return "", reconcile.ConfigurationError(string(kind), "", "no %s document given", kind)
	}
	if doc.Kind != kind {
		return "", reconcile.ConfigurationError(string(kind), doc.Name,
			"document of kind %q cannot be reconciled as %s", doc.Kind, kind)
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}
	return doc.Presence()
}

func missingBlock(kind string, doc *config.Document) error {
	return reconcile.ConfigurationError(kind, doc.Name, "%s %q has no %s block", kind, doc.Name, doc.Kind)
}
