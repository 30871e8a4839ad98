package steps

func buildUX(in Input) string {
	return assemble(in, "UX & Production Readiness", true, uxTask)
}

var uxTask = []string{
	"# TASK: UX & PRODUCTION READINESS\n",
	"Focus on user experience, accessibility, error handling, security, and production concerns:\n",
	"**IMPORTANT**: Review the changed lines of code from the \"Git Diff\" (lines prefixed with `+` or `-`). Evaluate the impact of these specific changes on UX, security, and production readiness.\n",
	"## Accessibility (A11y)",
	"Critical for all users, including those with disabilities:",
	"- **Semantic HTML**: Using correct elements (button, nav, main, article)?",
	"- **ARIA**: Missing labels, roles, or descriptions for interactive elements?",
	"- **Keyboard navigation**: Can users navigate without a mouse?",
	"- **Focus management**: Visible focus indicators? Focus traps in modals?",
	"- **Screen readers**: Alt text on images? Meaningful link text?",
	"- **Color contrast**: Text readable? Not relying solely on color?",
	"- **Forms**: Proper labels, error messages, field associations?\n",
	"## Error Handling & Resilience",
	"How does the app handle problems?",
	"- **Error boundaries**: React error boundaries in place for component errors?",
	"- **API failures**: Network errors handled gracefully? Retry logic?",
	"- **User feedback**: Clear error messages (not just \"Error occurred\")?",
	"- **Fallbacks**: Graceful degradation when features fail?",
	"- **Input validation**: Client-side validation with helpful messages?",
	"- **Loading states**: Proper loading indicators during async operations?",
	"- **Empty states**: Helpful messages when no data available?\n",
	"## Security Concerns",
	"Protecting user data and preventing vulnerabilities:",
	"- **XSS prevention**: User input properly sanitized? Using dangerouslySetInnerHTML safely?",
	"- **Data exposure**: Sensitive data in logs, errors, or URL params?",
	"- **Authentication**: Tokens/credentials handled securely?",
	"- **Authorization**: Proper permission checks before showing/enabling features?",
	"- **CSRF protection**: Forms protected against cross-site request forgery?",
	"- **Dependencies**: Known security vulnerabilities in packages?\n",
	"## Performance (User-Facing)",
	"Only flag if it impacts user experience:",
	"- **Perceived performance**: Loading indicators? Skeleton screens? Optimistic updates?",
	"- **Large bundles**: Code splitting for routes or heavy features?",
	"- **Images**: Optimized? Lazy loaded? Proper formats (WebP)?",
	"- **Virtualization**: Long lists (>100 items) that should be virtualized?",
	"- **Network waterfalls**: Multiple sequential requests that could be parallel?\n",
	"## User Experience (UX)",
	"Does this feel good to use?",
	"- **Feedback**: User actions acknowledged (button states, toasts, confirmations)?",
	"- **Discoverability**: Features obvious? Clear calls-to-action?",
	"- **Copy/messaging**: Clear, helpful text? Avoid jargon?",
	"- **Responsive**: Works on mobile/tablet? Touch-friendly?",
	"- **Consistency**: Follows established patterns in the app?",
	"- **Destructive actions**: Confirmations before delete/irreversible operations?\n",
	"## Production Considerations",
	"Ready for real users?",
	"- **Environment config**: API URLs, feature flags configurable?",
	"- **Logging**: Appropriate logging for debugging production issues?",
	"- **Monitoring**: Can we track errors/performance in production?",
	"- **Backwards compatibility**: Breaking changes handled gracefully?",
	"- **Rollback safety**: Can this be safely rolled back if issues arise?\n",
	"---",
	"**CRITICAL INSTRUCTION:**",
	"- Focus ONLY on user-facing concerns and production readiness",
	"- If no concerns, state: \"No UX or production concerns\" (one sentence only)",
	"- Do NOT repeat issues from previous steps (logic, tests, architecture)",
	"- Think from end-user perspective: accessibility, security, error handling",
	"- Flag only issues that affect real users or production stability",
	"- Use markdown formatting.",
}
