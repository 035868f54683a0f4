// Package hcloud checks Hetzner Cloud node template settings before they
// reach Rancher.
//
// Rancher accepts any server type, location or image name in a hetzner
// node template and only fails later, when the first node is provisioned.
// [Verifier] resolves those names against the Hetzner Cloud API up front:
//
//	v := hcloud.NewVerifier(token)
//	res, err := v.Verify(ctx, hcloud.Spec{
//	    ServerType: "cx22",
//	    Location:   "fsn1",
//	    Image:      "ubuntu-22.04",
//	})
//
// The image is looked up for the architecture of the server type, so an
// x86 image name paired with a CAX server type is reported as missing.
package hcloud
