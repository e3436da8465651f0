// Package envfile loads `.env`-style files in a fixed layer order and folds
// them into an immutable Env record.
//
// Files are read the way a POSIX shell would source simple assignments:
// a leading byte-order mark and carriage returns are ignored, blank lines and
// `#` comments contribute nothing, and every remaining `KEY=VALUE` line
// assigns. Later assignments win, within a file and across layers. Key names
// are not validated and only one level of surrounding quotes is removed.
package envfile
