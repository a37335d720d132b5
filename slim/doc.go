// Package slim reduces internal structures to compact external views.
//
// Query commands and summaries pass through these reducers before being
// printed, so large paper listings are capped and profiles never echo
// credentials or webhook URLs. Reducers are pure functions over their
// inputs.
package slim
