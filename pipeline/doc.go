// Package pipeline sequences the daily fetch, classify and notify
// stages against durable stage markers.
//
// Each stage consults its marker before doing work: a done fetch reuses
// stored papers, a done classification is never repeated for the same
// paper, and a day whose notify stage is done is skipped outright. An
// interrupted run therefore resumes where it stopped, and re-running a
// completed day costs no classifier calls.
//
// Weekends (judged by the logical date in UTC) are skipped unless the
// run is forced.
package pipeline
