package cmd

const DESCRIPTION = `
Fridayd is a cross-platform daemon that publishes a scheduled
social post once per week. It keeps time against a weekly clock,
uploads attached media in chunks and exposes a control socket
for immediate posts, queue management and status checks.
`

const (
	RunDescription = `The run command starts the fridayd daemon: it verifies the
configured credentials, arms the weekly trigger and serves the
control socket until stopped.

Example:
        fridayd run

`
	PostDescription = `The post command publishes immediately. With a running daemon
it posts through the control socket; otherwise it posts directly
using the local config. Text and media attachments can override
the configured defaults.

Example:
        fridayd post -m "It's Friday!" -f pic.png

`
	StatusDescription = `The status command prints the daemon's logged-in account, the
next trigger instant and the pending queue length.

Example:
        fridayd status

`
	QueueDescription = `The queue command manages pending posts. A queued entry takes
precedence over the configured message when the weekly trigger
fires, and is consumed exactly once.

Example:
        fridayd queue add -m "release day" -f shot.png
        fridayd queue list
        fridayd queue remove 3

`
	VerifyDescription = `The verify command checks the configured credentials against
the remote platform and prints the authenticated account.

Example:
        fridayd verify

`
	StopDescription = `The stop command asks a running daemon to shut down.

Example:
        fridayd stop

`
)
