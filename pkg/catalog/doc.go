// Package catalog loads the job listings shown on the careers site together
// with the application form configured for each role.
//
// Catalog files are YAML or JSON documents holding a `roles` list. Each entry
// describes a listing (title, description, icon, colour, external form link)
// and may carry a `form` block with the role label and ordered field
// descriptors. YAML anchors can be used to share option lists between roles.
//
//	roles:
//	  - id: php-developer
//	    title: PHP Developer
//	    form:
//	      roleLabel: PHP Developer
//	      fields:
//	        - { name: fullName, label: Full Name, kind: text, required: true }
//
// Overlays adjust a loaded catalog with RFC 6902 JSON Patch documents keyed
// by role id, and Live keeps a swappable catalog that can follow a directory
// on disk.
package catalog
