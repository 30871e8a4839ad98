package steps

func buildTests(in Input) string {
	return assemble(in, "Test Analysis", true, testsTask)
}

var testsTask = []string{
	"# TASK: TEST ANALYSIS\n",
	"Evaluate test coverage and quality following React Testing Library best practices:\n",
	"**IMPORTANT**: Analyze how the tests cover the specific changes introduced in the \"Git Diff\". Flag any gaps in testing related **directly** to the modified code.\n",
	"## React Testing Library Philosophy",
	"Tests should follow these principles:",
	"- **Test behavior, not implementation**: Query by text/role/label users see, not by component internals",
	"- **Avoid testing internal state**: Test what renders, not component state values",
	"- **No shallow rendering**: Always use full rendering with `render()`",
	"- **User interactions**: Use `userEvent` over `fireEvent` for realistic interactions",
	"- **Async properly**: Use `waitFor`, `findBy*` queries for async operations\n",
	"## Scenario Coverage",
	"Looking at the changed code and related tests:",
	"- Are all user-visible behaviors tested?",
	"- Are edge cases covered (empty states, loading, errors)?",
	"- Are different user interactions tested (click, type, submit)?",
	"- Are accessibility features tested (keyboard nav, ARIA)?",
	"- If no test file found, what scenarios SHOULD be tested?\n",
	"## Test Quality - React Testing Library Patterns",
	"**Good patterns to look for:**",
	"- Using `screen.getByRole`, `getByLabelText`, `getByText` (not `getByTestId` unless necessary)",
	"- Using `userEvent` for interactions (not `fireEvent`)",
	"- Using `waitFor` or `findBy*` for async (not manual `act()`)",
	"- Testing accessibility with roles and ARIA queries",
	"- Clear arrange-act-assert structure",
	"- Descriptive test names (\"should show error when...\" not \"test 1\")\n",
	"**Anti-patterns to flag:**",
	"- Testing implementation details (component state, props directly)",
	"- Using `getByTestId` excessively (should use semantic queries)",
	"- Shallow rendering or enzyme patterns",
	"- Testing internal methods or private functions",
	"- Mocking too much (over-mocking makes tests brittle)",
	"- Snapshots testing (often anti-pattern in React, tests implementation)\n",
	"## Mocking Strategy",
	"- Are external dependencies (API calls, routing) properly mocked?",
	"- Is mocking minimal and focused (not mocking React itself)?",
	"- Mock data realistic and representative?\n",
	"## Missing Tests",
	"List specific test cases that should be added, with React Testing Library examples:",
	"```typescript",
	"it(\"should show error message when submission fails\", async () => {",
	"  const user = userEvent.setup();",
	"  render(<MyComponent />);",
	"  ",
	"  await user.click(screen.getByRole(\"button\", { name: /submit/i }));",
	"  ",
	"  expect(await screen.findByText(/error occurred/i)).toBeInTheDocument();",
	"});",
	"```\n",
	"---",
	"**CRITICAL INSTRUCTION:**",
	"- Focus ONLY on gaps, issues, and anti-patterns",
	"- If coverage is comprehensive and follows RTL best practices, state: \"Test coverage is comprehensive\" (one sentence only)",
	"- Do NOT list existing tests that are fine",
	"- Flag React Testing Library anti-patterns (testing implementation, over-mocking, shallow rendering)",
	"- Be specific about what's missing and why it matters",
	"- Provide React Testing Library example test cases for gaps",
	"- Use markdown formatting.",
}
