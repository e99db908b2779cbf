// Package vcs initializes version control for generated projects. It
// runs git init when the project directory is not already a repository
// and synthesizes a .gitignore matched to the detected project kind.
package vcs
