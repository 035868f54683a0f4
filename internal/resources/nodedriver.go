package resources

import (
	"github.com/imamik/ranchsync/internal/config"
	"github.com/imamik/ranchsync/internal/platform/rancher"
	"github.com/imamik/ranchsync/internal/reconcile"
)

// KindNodeDriver is the kind name used in logs, metrics and errors.
const KindNodeDriver = "node driver"

// NodeDriverPayload is the create body of a custom node driver.
type NodeDriverPayload struct {
	Name             string   `json:"name"`
	Active           bool     `json:"active"`
	Builtin          bool     `json:"builtin"`
	URL              string   `json:"url"`
	UIURL            string   `json:"uiUrl,omitempty"`
	Checksum         string   `json:"checksum,omitempty"`
	WhitelistDomains []string `json:"whitelistDomains,omitempty"`
}

// NodeDriverOperation returns the reconcile operation for a node driver document.
func NodeDriverOperation(doc *config.Document) (*reconcile.Operation[NodeDriverPayload], error) {
	presence, err := checkDocument(doc, config.KindNodeDriver)
	if err != nil {
		return nil, err
	}

	return &reconcile.Operation[NodeDriverPayload]{
		Kind:       KindNodeDriver,
		Collection: rancher.CollectionNodeDriver,
		Name:       doc.Name,
		Presence:   presence,
		Payload: func(reconcile.Resolved) (NodeDriverPayload, error) {
			d := doc.NodeDriver
			if d == nil {
				return NodeDriverPayload{}, missingBlock(KindNodeDriver, doc)
			}
			return NodeDriverPayload{
				Name:             doc.Name,
				Active:           true,
				Builtin:          false,
				URL:              d.URL,
				UIURL:            d.UIURL,
				Checksum:         d.Checksum,
				WhitelistDomains: d.WhitelistDomains,
			}, nil
		},
	}, nil
}
