package steps

func buildLogic(in Input) string {
	return assemble(in, "Logic & Potential Bugs", true, logicTask)
}

var logicTask = []string{
	"# TASK: LOGIC & POTENTIAL BUGS\n",
	"Deep dive into correctness and code quality following React/TypeScript best practices:\n",
	"**IMPORTANT**: Review the changed lines of code from the \"Git Diff\" (lines prefixed with `+` or `-`). Analyze them in the context of the surrounding code, but only flag issues *in the changes*.\n",
	"## TypeScript Type Safety",
	"- Are there `any` types that should be specific?",
	"- Missing type annotations on function parameters/returns?",
	"- Unsafe type assertions (`as`) without validation?",
	"- Non-null assertions (`!`) that could fail?\n",
	"## Null/Undefined Safety",
	"- Potential null/undefined access errors?",
	"- Missing optional chaining (`?.`) or nullish coalescing (`??`)?",
	"- Empty array/object checks before accessing?",
	"- Proper handling of optional props?\n",
	"## React-Specific Issues",
	"- **Dependencies**: Missing or incorrect dependency arrays in useEffect/useMemo/useCallback?",
	"- **State updates**: Using stale state in callbacks? Need functional updates?",
	"- **Keys**: Missing or non-unique keys in lists?",
	"- **Hook rules**: Hooks called conditionally or in loops?",
	"- **Closures**: Stale closures in event handlers or effects?",
	"- **Refs**: Using refs when state would be better (or vice versa)?\n",
	"## Performance Concerns",
	"- Missing memoization causing unnecessary re-renders?",
	"- Inline function/object creation in render (should use useCallback/useMemo)?",
	"- Heavy computations that should be memoized?",
	"- Note: Only flag if actually problematic, not premature optimization\n",
	"## Edge Cases & Boundary Conditions",
	"- Empty arrays/strings/objects handled?",
	"- Zero/negative numbers handled?",
	"- Array index boundaries checked?",
	"- Loading/error states properly managed?\n",
	"## Logic Errors",
	"- Incorrect operators or comparisons (=== vs ==, && vs ||)?",
	"- Off-by-one errors in loops or array access?",
	"- Wrong assumptions about data structure?",
	"- Race conditions in async operations?\n",
	"## Code Smells",
	"- Components doing too much (>300 lines, multiple responsibilities)?",
	"- Excessive prop drilling (>2-3 levels)?",
	"- Code duplication that should be extracted?",
	"- Complex nested ternaries or conditionals?\n",
	"## Readability",
	"- Complex logic needing comments?",
	"- Magic numbers that should be named constants?",
	"- Unclear variable names in complex logic?\n",
	"---",
	"**CRITICAL INSTRUCTION:**",
	"- Focus ONLY on problems and improvements",
	"- If no issues found, state: \"No logic or bug issues found\" (one sentence only)",
	"- Do NOT mention things that are working correctly",
	"- Follow React and TypeScript community best practices",
	"- Be thorough and specific. Reference line numbers from the diff.",
	"- Provide code examples for suggested fixes.",
	"- Use markdown formatting.",
}
