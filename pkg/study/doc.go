// Package study assembles metadata, UI configuration, components and the
// sequence tree into a reVISit study config document.
package study
