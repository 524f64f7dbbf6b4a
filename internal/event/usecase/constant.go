package usecase

// Commit-message prefixes are the wire contract between the batch and
// attempt subsystems and status routing: staging commits start with
// "Merge ", trying commits with "Try ", and stale staging probes carry
// the "[ci skip]" temporary-branch marker with the PR number appended.
// Do not change these without changing the commit writers.
const (
	msgPrefixMerge      = "Merge "
	msgPrefixTry        = "Try "
	msgPrefixStagingTmp = "[ci skip] -bors-staging-tmp-"
)

// Pull-request actions
const (
	actionOpened      = "opened"
	actionClosed      = "closed"
	actionReopened    = "reopened"
	actionSynchronize = "synchronize"
	actionEdited      = "edited"

	actionCreated   = "created"
	actionDeleted   = "deleted"
	actionSubmitted = "submitted"
)
