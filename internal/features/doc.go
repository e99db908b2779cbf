// Package features installs optional project capabilities (TypeScript,
// ESLint, Tailwind, Prettier, Stylelint, Jest) and writes their
// configuration artifacts into the project tree.
//
// Each feature is install-then-synthesize: packages go in through the
// selected package manager, then the artifact files are written.
// Artifact writes are wholesale overwrites with two deliberate
// exceptions: custom lint rules merge into the rules key of an existing
// lint config, and stylesheet directives append to existing stylesheets
// rather than replacing them.
package features
