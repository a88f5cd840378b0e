package render

import (
	"github.com/goliatone/go-careers/pkg/catalog"
	"github.com/goliatone/go-careers/pkg/schema"
)

// PageKind selects which page a renderer produces.
type PageKind string

const (
	// PageListings is the landing page listing every open role.
	PageListings PageKind = "listings"
	// PageRole is the detail page of one role with its application form.
	PageRole PageKind = "role"
	// PageNotFound is shown for unknown role ids.
	PageNotFound PageKind = "not-found"
)

// Page is the data a renderer needs for one page. Form is nil on role pages
// whose listing has no form configured.
type Page struct {
	Kind     PageKind
	Title    string
	BasePath string
	Listings []catalog.Listing
	Listing  *catalog.Listing
	Form     *schema.RoleForm
	// Action is the URL the application form posts to.
	Action string
}

// ListingsPage builds the landing page.
func ListingsPage(basePath string, listings []catalog.Listing) Page {
	return Page{
		Kind:     PageListings,
		Title:    "Careers",
		BasePath: basePath,
		Listings: listings,
	}
}

// RolePage builds the detail page for listing. form may be nil.
func RolePage(basePath string, listing catalog.Listing, form *schema.RoleForm) Page {
	return Page{
		Kind:     PageRole,
		Title:    listing.Title,
		BasePath: basePath,
		Listing:  &listing,
		Form:     form,
		Action:   basePath + "/careers/" + listing.ID + "/apply",
	}
}

// NotFoundPage builds the page shown for unknown roles.
func NotFoundPage(basePath string) Page {
	return Page{Kind: PageNotFound, Title: "Role not found", BasePath: basePath}
}
