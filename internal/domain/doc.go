// Package domain contains the core business entities of the quiz worker:
// the processing request that arrives from the queue, the document status
// lifecycle, generated questions, subscription plans and the error reports
// sent to the operations channel. It has no dependencies on infrastructure.
package domain
