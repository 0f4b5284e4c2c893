package script

import (
	"fmt"
	"strings"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/news"
)

// PromptInputs carries everything the instruction block depends on. Both
// builders are pure string functions with no hidden state.
type PromptInputs struct {
	Hosts           HostPair
	StoryCount      int
	TargetMinutes   int
	TargetWords     int
	ProfanityFilter bool
}

// BuildSystemPrompt produces the instruction block sent as the system
// message: host personas, conversational-cadence steering, citation and
// segment rules, the word budget, and the required output shape.
func BuildSystemPrompt(in PromptInputs) string {
	host1 := in.Hosts.Host1
	host2 := in.Hosts.Host2

	var b strings.Builder

	b.WriteString(`You're writing an engaging podcast conversation that FLOWS naturally. Not a Q&A. Not an interview. A real conversation where people build on each other's thoughts.

## THE HOSTS
`)
	for _, h := range in.Hosts.Hosts() {
		b.WriteString(fmt.Sprintf("**%s**: %s\n   Talks like: %s\n\n", h.Name, h.Personality, h.Style))
	}

	b.WriteString(`## CRITICAL: FIX THE CHOPPY PROBLEM

**STOP DOING THIS** (choppy Q&A):
A: "What happened?"
B: "They released something."
A: "What is it?"
B: "It's an AI model."

**DO THIS INSTEAD** (flowing conversation):
A: "Okay." (SHORT - 1 word)
B: "So check this out. This company just dropped this new AI model [src: 0], and dude—the numbers they're claiming are honestly kind of insane. Like we're talking forty percent faster than anything we've seen [src: 0]. Which, I mean, that sounds almost too good to be true? But apparently they've been testing it for months and the results are pretty consistent [src: 0]." (LONG - builds momentum)
A: "Wait wait wait. Forty percent?" (SHORT - interruption)
B: "Forty. Percent." (SHORT - emphasis)
A: "Okay that's actually wild. But here's what I'm wondering—and maybe I'm being too skeptical here—but what's the actual use case? Because we've seen fast models before and they end up being fast at like... nothing useful. You know what I mean?" (MEDIUM-LONG - thinking through it)

**KEY PATTERN**:
- Someone explains something IN DEPTH (50-100 words)
- Other person reacts SHORT (1-10 words)
- They riff on it more (30-50 words)
- Short reaction again
- Builds to another deep dive

**MIX THESE LENGTH PATTERNS**:
- 1-3 words: "Dude." "Wait, what?" "Seriously?"
- 5-15 words: "Okay that's actually crazy. But here's my question—"
- 30-60 words: Medium explanation with some detail
- 70-120 words: DEEP DIVE - really explain something, build momentum, connect ideas
- Mix them constantly: SHORT -> LONG -> SHORT -> MEDIUM -> SHORT -> LONG

**USE NATURAL SPEECH**:
- Contractions: "it's", "we're", "that's", "you're", "don't"
- Fillers: "I mean", "you know", "like", "honestly", "basically", "actually"
- Thinking: "Hmm", "Oh", "Well", "So", "Right"
- Interruptions: "Wait—" "Hold on—" "But—"

**MAKE IT DEEP, NOT SURFACE**:
- Don't just state facts
- Explore WHY it matters
- Connect to bigger trends
- Speculate on implications
- Build narratives, not just bullet points

`)

	b.WriteString(fmt.Sprintf(`**PERSONALITIES MUST BE DISTINCT**:
- %s: word choice, energy, and perspective must reflect: %s
- %s: a totally different vibe: %s
- They see things differently and challenge each other (nicely)

**SOURCE YOUR FACTS**: Put [src: <story id>] after every factual claim
- "They raised $100M [src: 0]"
- "The model is 40%% faster [src: 1]"

`, host1.Name, host1.Personality, host2.Name, host2.Personality))

	b.WriteString(fmt.Sprintf(`**SEGMENTS**: Use exactly these segment names: %s
1. Cold open (45-60 sec): Hook + banter
2. Stories: DEEP DIVES into each story. Really explore them.
3. Kicker (30-40 sec): Wrap with a thought

`, strings.Join(segmentNames(in.StoryCount), ", ")))

	if in.TargetWords > 0 {
		b.WriteString(fmt.Sprintf(`**TARGET**: ~%d minutes. Write at least %d words of dialogue — that number is a floor, not a ceiling.
- Mix VERY short (1-5 words) with LONG explanations (70-120 words)
- Let conversation flow and build
- NOT rapid-fire Q&A

`, in.TargetMinutes, in.TargetWords))
	} else {
		b.WriteString(`**TARGET**: Keep it brief — there is no minimum length. Let the conversation flow naturally and stop when the stories are covered.

`)
	}

	if in.ProfanityFilter {
		b.WriteString("Keep it clean—no profanity.\n\n")
	}

	b.WriteString(fmt.Sprintf(`## OUTPUT FORMAT
Return ONLY valid JSON with this structure:
{
    "rundown": [
        {"segment": "cold_open", "duration_estimate": 50},
        {"segment": "story_0", "duration_estimate": 120},
        {"segment": "kicker", "duration_estimate": 35}
    ],
    "dialogue": [
        {"speaker": %q, "text": "Yo!", "segment": "cold_open", "sources": []},
        {"speaker": %q, "text": "Okay so we've got this wild story today about this AI company [src: 0], and I'm not even kidding when I say the numbers they're putting out are kind of blowing my mind.", "segment": "cold_open", "sources": [0]},
        {"speaker": %q, "text": "Wait. Hold on.", "segment": "cold_open", "sources": []}
    ],
    "disclaimer": ""
}

CRITICAL RULES:
- MIX lengths: 1 word, 5 words, 30 words, 80 words, back to 5 words
- Let people explain things IN DEPTH before reacting
- Don't ping-pong every line
- Build momentum, then punctuate with short reactions
- Include [src: <story id>] for facts
- Segments: %s
`, host1.Name, host2.Name, host1.Name, strings.Join(segmentNames(in.StoryCount), ", ")))

	return b.String()
}

// BuildUserPrompt produces the data block: one section per story in
// selection order, followed by conversational reminders.
func BuildUserPrompt(stories []news.Story) string {
	var b strings.Builder
	b.WriteString("Generate a newscast script using these stories:\n\n")

	for _, story := range stories {
		b.WriteString(fmt.Sprintf("## STORY %d\n", story.ID))
		b.WriteString(fmt.Sprintf("**Title**: %s\n", story.Title))
		b.WriteString(fmt.Sprintf("**Source**: %s\n", story.Source))
		b.WriteString(fmt.Sprintf("**Summary**: %s\n", story.Summary))
		b.WriteString(fmt.Sprintf("**URL**: %s\n", story.URL))
		if story.PublishedAt != "" {
			b.WriteString(fmt.Sprintf("**Published**: %s\n", story.PublishedAt))
		}
		b.WriteString("\n")
	}

	b.WriteString(`Remember - Make it CONVERSATIONAL:
- Natural back-and-forth with short reactions: 'Right', 'Exactly', 'Wait, what?', 'That's wild'
- Use conversational filler: 'I mean', 'You know', 'Like', 'Actually'
- Mix short (3-10 word) reactions with longer (30-50 word) explanations
- Aim for 25-35 dialogue exchanges per story (not 5-8 monologues)
- Every fact must have [src: <story id>] annotation
- Make the hosts sound distinctly different in vocabulary and energy
- Dive deeper: ask questions, explore implications, add context
- Include callbacks to earlier moments
- Return ONLY valid JSON (no markdown code blocks)
`)

	return b.String()
}

// segmentNames enumerates the canonical segment set for n stories:
// cold_open, story_0 .. story_{n-1}, kicker.
func segmentNames(storyCount int) []string {
	names := []string{"cold_open"}
	for i := 0; i < storyCount; i++ {
		names = append(names, fmt.Sprintf("story_%d", i))
	}
	return append(names, "kicker")
}
