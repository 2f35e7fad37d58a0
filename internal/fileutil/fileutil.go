// Package fileutil holds the file modes used for files oastubs writes.
package fileutil

import "os"

// OwnerReadWrite is the mode for mapped document dumps, which may contain
// API details the owner has not published.
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the mode for generated test sources, which build tools
// and other users need to read.
const ReadableByAll os.FileMode = 0o644
