// Package timezone renders and stamps times in the zone named by
// APP_TIMEZONE, loaded once at startup and falling back to UTC.
//
// Now is truncated to milliseconds so a timestamp read back from the document
// store equals the one that was written. Format is what response DTOs use for
// createdAt and updatedAt.
package timezone
