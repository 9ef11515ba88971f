package ui

// Package ui contains the Fyne-based desktop shell for the break engine.
// It renders the break overlay, the pre-warning toast, the system tray menu
// and the settings dialog, and calls back into app.App for every action.
// It holds no scheduling state of its own.
