// Package ui holds the color themes shared by the command-line output and
// the bench dashboard. ANSI themes serve the plain CLI; TUI themes carry
// lipgloss colors.
package ui
