package catalogs

import "errors"

var (
	ErrNotFound  = errors.New("catalog not found")
	ErrForbidden = errors.New("no access to catalog")
)

// CanView reports whether userID may read the catalog. Public catalogs are
// readable by anyone, including the anonymous viewer (empty userID).
func CanView(c *Catalog, userID string) bool {
	if c.Visibility == VisibilityPublic {
		return true
	}
	return userID != "" && c.UserID == userID
}

// CanModify gates every write: only the owner may change a catalog or the
// items under it.
func CanModify(c *Catalog, userID string) bool {
	return userID != "" && c.UserID == userID
}
