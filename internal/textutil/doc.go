// Package textutil provides the string sanitizers shared by path resolution
// and extraction output naming.
package textutil
