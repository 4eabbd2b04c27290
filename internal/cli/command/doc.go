// Package command provides the ultron CLI command tree.
//
// Commands are defined with urfave/cli/v2 and read verb first:
//
//   - root.go: App, global flags and the Before hook that loads
//     preferences, bootstraps and loads the session
//   - connect.go: connect, disconnect and the default inventory
//   - resource.go, admin.go, client.go, group.go: new, list, show, update
//     and delete for admins, clients and groups, plus group membership
//   - task.go: submit task and perform on clients|group
//   - stat.go: stat and filter over the clients of an inventory
//   - shell.go: the interactive shell
//
// Handlers read the per-invocation Runtime from App.Metadata, call the
// service layer and render results with the output package.
package command
