// Package deploy moves a local project to a server as a bare repository
// and links a working copy to it.
//
// A run is strictly sequential:
//   - git clone --bare <project> <project>.git
//   - scp -r <project>.git <server>:<project>.git
//   - remove the local <project>.git
//   - in <remote>: git remote add <project> <server>:<project>.git, then
//     git push --set-upstream <project> master
//
// The first failing step aborts the run. Nothing is retried or rolled back,
// so a second run with the same arguments is expected to collide with the
// state the first one left.
package deploy
