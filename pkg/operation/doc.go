/*
Package operation orchestrates a full batch replacement run.

	            +-------------+
	            |  Operator   |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+-----+
	| selector|   |  rules  |   | processor|
	| (paths) |   | (load)  |   | (apply)  |
	+---------+   +---------+   +----------+

🎯 Purpose:
- Resolves the rule-file and target-file selections from two path regexes
- Sorts rule files by basename so execution order is reproducible
- Applies every rule file to every target file, in that order
- Accumulates and reports the run summary

🔄 Flow:
1. Select rule files (sorted) and target files (walk order) under Root
2. For each rule file: load its RuleSet
3. For each target: process (report, back up, write or dry-run)
4. Print totals

⚡ Key decisions:
- Rule-file order is controlled (basename sort, full-path tie-break); target
  order is not, targets are independent of each other
- Selections are snapshots: files appearing mid-run are not picked up
- Any failure (bad pattern, unreadable file, load error) aborts the whole
  run; there is nothing to retry, the operator fixes the input and reruns

🔍 Example:

	op, err := operation.New(operation.Options{
		Root:          ".",
		RulesPattern:  `\.rules$`,
		TargetPattern: `\.go$`,
		DryRun:        true,
		Reporter:      status.NewReporter(ctx, os.Stdout),
	})
	if err != nil { ... }
	summary, err := op.Execute(ctx)
*/
package operation
