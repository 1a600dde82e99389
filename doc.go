// Package contractgen wires the contract form, the remote renderer and the
// numbering service into a ready-to-use submission controller.
//
// Most callers use New to obtain a Stack, or Generate for a single submit of
// an already filled form. The sub-packages under pkg/ can be used on their own.
package contractgen
