// Package stage models the tenant-scoped production stage catalog.
// Stages form a strict total order (cutting, embroidery, stitching, finishing,
// delivery, ...) through which every order item travels. Each stage carries a
// typed Policy resolved once per task transition: whether the stage is
// mandatory, skippable, requires a photo or an approval before completion, and
// whether the customer is notified on completion.
//
// The catalog is read-mostly; stage definitions are managed by external
// master-data collaborators and only consumed here.
package stage
