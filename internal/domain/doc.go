// Package domain holds the shared entity types for the phishing-awareness
// training platform. It has no dependencies on other internal packages;
// services and repositories both import from here, never the reverse.
package domain
