// Package pipeline runs an ordered list of build stages against a shared
// BuildContext and lets features hook into the stages.
//
// Every stage goes through the same five phases:
//
//	initialize -> pre_process hooks -> process -> post_process hooks -> finalize
//
// The first failure in any phase stops the run; later stages never start.
// Features declare their (stage, lifecycle) subscriptions through Subscribe
// and are invoked in registration order within each bucket.
package pipeline
