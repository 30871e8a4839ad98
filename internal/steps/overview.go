package steps

// Overview is descriptive only. It never sees earlier findings.
func buildOverview(in Input) string {
	return assemble(in, "Overview", false, overviewTask)
}

var overviewTask = []string{
	"# TASK: CODE OVERVIEW (NO REVIEW YET)\n",
	"Provide a purely descriptive overview of what changed. NO judgments or reviews yet.\n",
	"Base your summary **only** on the changes shown in the \"Git Diff\" section (lines starting with `+` or `-`).\n",
	"## What Changed",
	"Describe in 2-3 paragraphs:",
	"- What files were modified, added, or removed",
	"- What functionality is being added, changed, or removed",
	"- The technical approach taken (new components, refactoring, bug fixes, API changes, etc.)",
	"- Any architectural or structural changes to the codebase\n",
	"---",
	"**CRITICAL INSTRUCTIONS:**",
	"- This is OVERVIEW ONLY - do not review or judge the code yet",
	"- Do NOT mention bugs, issues, problems, or improvements",
	"- Do NOT say things like \"good\", \"bad\", \"should\", \"could be better\"",
	"- Just describe what changed factually and neutrally",
	"- Think of this as reading a git commit message - just state what happened",
	"- Detailed review will happen in the next 4 steps",
	"- Use markdown formatting. Be clear and concise.",
}
