// Package deps checks for the external binaries demoreel shells out to.
package deps
