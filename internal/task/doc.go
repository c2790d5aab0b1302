// Package task runs document processing in the background. Intake code
// submits tasks to a bounded in-memory queue; a pool of workers drains it,
// each worker processing one document end to end before taking the next.
package task
