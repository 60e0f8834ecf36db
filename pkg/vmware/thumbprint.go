package vmware

import (
	"crypto/tls"
	"fmt"

	"github.com/vmware/govmomi/object"
)

// Thumbprint returns the SHA-1 fingerprint of the certificate presented by
// host, formatted the way the installer expects it at its thumbprint prompt
// (colon separated upper-case hex).
func Thumbprint(host string) (string, error) {
	u, err := ServiceURL(host)
	if err != nil {
		return "", err
	}

	var info object.HostCertificateInfo
	if err := info.FromURL(u, new(tls.Config)); err != nil {
		return "", fmt.Errorf("failed to read certificate of %s: %w", u.Host, err)
	}
	if info.ThumbprintSHA1 == "" {
		return "", fmt.Errorf("no certificate presented by %s", u.Host)
	}

	return info.ThumbprintSHA1, nil
}
