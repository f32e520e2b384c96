// Package cpath implements component paths: hierarchical addresses carrying
// an explicit protocol such as "cpath://Root/Mesh/nodes" or
// "file:///etc/fstab". A Path is an immutable value; parsing keeps the text
// after the protocol prefix byte-for-byte so it can be reproduced exactly.
package cpath
