package steps

func buildNomenclature(in Input) string {
	return assemble(in, "Nomenclature", true, nomenclatureTask)
}

var nomenclatureTask = []string{
	"# TASK: NOMENCLATURE DEEP DIVE\n",
	"Focus exclusively on naming, conventions, and clarity following React/TypeScript best practices:\n",
	"## File Names",
	"- React components: PascalCase (e.g., `UserProfile.tsx`, not `user-profile.tsx`)",
	"- Hooks: camelCase starting with \"use\" (e.g., `useAuth.ts`)",
	"- Utilities/helpers: camelCase (e.g., `formatDate.ts`)",
	"- Test files: match source file name with `.test` or `.spec` suffix",
	"- Are files in appropriate directories (components/, hooks/, utils/, etc.)?\n",
	"## Components & Hooks",
	"- Component names: PascalCase, descriptive, noun-based (e.g., `UserCard` not `ShowUser`)",
	"- Custom hooks: camelCase, start with \"use\" (e.g., `useLocalStorage`)",
	"- Props interfaces: `ComponentNameProps` pattern (e.g., `UserCardProps`)",
	"- Avoid generic names like `Component`, `Item`, `Data`",
	"- Event handlers: `handle` prefix (e.g., `handleClick`, `handleSubmit`)\n",
	"## Variables & Functions",
	"- Boolean variables: use `is`, `has`, `should` prefixes (e.g., `isLoading`, `hasError`)",
	"- Functions: verb-based, camelCase (e.g., `fetchUser`, `calculateTotal`)",
	"- Constants: UPPER_SNAKE_CASE for true constants (e.g., `MAX_RETRIES`)",
	"- Avoid abbreviations unless well-known (URL, HTTP ok; usr, btn not ok)",
	"- Compare against naming patterns in the codebase context provided\n",
	"## TypeScript Types & Interfaces",
	"- Interfaces: PascalCase, describe what they represent (e.g., `User`, `ApiResponse`)",
	"- Type aliases: PascalCase (e.g., `UserId`, `StatusType`)",
	"- Generic type parameters: single uppercase letter or descriptive (e.g., `T`, `TData`, `TError`)",
	"- Avoid `I` prefix for interfaces (old C# convention, not TypeScript standard)",
	"- Union types: descriptive names (e.g., `Status = \"idle\" | \"loading\" | \"success\"` not `S`)\n",
	"## Typos & Language",
	"- Any typos in variable/function/file names?",
	"- Consistent terminology throughout (e.g., user vs customer, fetch vs get)?",
	"- Proper English grammar in names?\n",
	"---",
	"**CRITICAL INSTRUCTION:**",
	"- Report ONLY issues and improvements needed",
	"- If no issues found, state: \"No nomenclature issues found\" (one sentence only)",
	"- Do NOT list things that are correct",
	"- Focus on React/TypeScript community standards",
	"- Be thorough in finding problems, minimal in praising what works",
	"- Use markdown formatting with specific examples and suggestions.",
}
