// Package plantuml renders the transitive dependents of a class as a
// PlantUML class diagram.
//
// # Output
//
// [WriteDependents] performs a depth-first, pre-order walk from the target
// node along dependent links and writes:
//
//	@startuml
//	class "Base" {}
//	"Child" --> "Base"
//	class "Child" {}
//	@enduml
//
// Every visited node produces one class declaration labelled with its
// basename. Every dependent relation followed produces one edge from the
// dependent to the current node, immediately followed by the dependent's own
// subtree.
//
// # Limitations
//
// Labels are basenames only, so two identities sharing a last segment (such
// as App\Models\User and Admin\User) render as the same diagram node.
//
// A node reachable along several paths is written once per path.
//
// # Cycles
//
// By default the walk does not detect cycles: if two classes import each
// other the walk never ends and the output grows until the process runs out
// of stack. Set [Options.BreakCycles] to stop descending into a node that is
// already on the current path; the closing edge is still written. On acyclic
// graphs both modes produce identical output.
package plantuml
