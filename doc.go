// Package main provides the entry point for the Trofos backend.
// It initializes and runs a web server using the Fiber framework that serves
// the REST API for courses, projects, sprints, backlogs and invites, and that
// drives the CSV-based course roster import pipeline. The application uses
// gorm for data persistence and a session cookie based authentication layer.
package main
