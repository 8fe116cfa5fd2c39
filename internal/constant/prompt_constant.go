package constant

// ContextExtractionPromptV1 asks the model for a strict JSON object describing
// what it sees. The response frequently wraps the object in prose or markdown
// fences, so the extractor parses it with brace matching rather than trusting
// the raw body.
const ContextExtractionPromptV1 = `Analyze the attached photo of a physical device and describe the visible problem.

Return ONLY a JSON object with exactly this structure:
{
  "primary_category": "main device category (e.g. printer, router, appliance, general)",
  "secondary_categories": ["related categories"],
  "detected_issues": ["concrete problems visible in the image"],
  "visual_indicators": ["LEDs, error codes, physical damage, display contents"],
  "urgency_level": "low|medium|high|critical",
  "keywords": ["search keywords for troubleshooting documents"],
  "device_type": "specific device type if identifiable",
  "problem_type": "hardware|software|connectivity|wear|unknown"
}

Do not add commentary outside the JSON object.`

// DocumentEnrichmentPromptV1 drives the optional AI-assisted tag and indicator
// extraction during document registration.
const DocumentEnrichmentPromptV1 = `Read the troubleshooting document below (and the attached reference image, if any).

Return ONLY a JSON object:
{
  "tags": ["short lowercase tags"],
  "visual_indicators": ["observable symptoms this document addresses"],
  "issue_type": "hardware|software|connectivity|wear|unknown",
  "severity_level": "low|medium|high|critical"
}`

// GroundedAnswerTaskV1 is appended after the serialized context and reference
// documents in the synthesis prompt.
const GroundedAnswerTaskV1 = `<task_instructions>
You are a device-support assistant diagnosing the user's device from the image analysis above.

RULES:
1. Ground your answer in the reference documents when they are relevant; say so when they are not.
2. Lead with the most likely diagnosis, then concrete remediation steps in order.
3. Mention safety warnings from the documents before any hands-on step.
4. If the analysis is inconclusive, say what additional photo or detail would help.
5. Answer in plain language a non-technician can follow.
</task_instructions>`
