// Package report renders the verdict and its evidence as a markdown PR
// comment. The body always starts with a hidden marker comment so a rerun
// can find and update its own earlier comment.
package report
