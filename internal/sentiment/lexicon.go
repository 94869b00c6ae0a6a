package sentiment

// Word lists carried over from the original feed analyzer. Fairness of the
// vocabulary is explicitly not a goal; tune with care, every entry shifts
// scores fleet-wide.

var positiveWords = []string{
	"happy", "joy", "excited", "love", "inspired", "grateful",
	"amazing", "proud", "confident", "hopeful", "hope", "peace", "freedom",
	"great", "cheerful", "uplifted", "accomplished", "peaceful", "motivated",
	"encouraged", "better", "progress", "success", "wins", "celebrates",
	"growth", "breakthrough", "improves", "achieves", "strong", "record-high",
	"optimistic", "thriving", "surges", "praises", "boosts", "innovative",
	"clemency", "recognition", "relief", "renewed", "recovery", "rescued",
}

var negativeWords = []string{
	"sad", "angry", "hate", "depressed", "frustrated", "hopeless", "anxious",
	"scared", "tired", "lonely", "miserable", "worthless", "failure", "afraid",
	"numb", "crying", "helpless", "guilt", "ashamed", "stressed",
	"death", "ache", "pain", "grief", "loss", "broken", "suffering",
	"mourning", "war", "crisis", "fails", "scandal", "decline", "warns",
	"crash", "struggles", "falls", "controversy", "outrage", "disaster",
	"accused", "backlash", "threat", "blockade", "controversial", "violence",
}

// Contrast terms signal that positive sentiment earlier in the text may be
// undercut: discourse markers plus the loaded adjectives headlines lean on.
var contrastWords = []string{
	"but", "despite", "however", "yet", "although",
	"shocking", "unbelievable", "devastating", "heartbreaking", "outrageous",
	"terrifying", "brutal", "grim",
}

var negativePhrases = []string{
	"mass shooting", "child abuse", "hate speech", "give up", "aid block",
	"war crime", "ethnic cleansing", "death toll", "air strike",
}

var positivePhrases = []string{
	"peace talks", "peace deal", "good life", "ceasefire agreement",
	"humanitarian relief", "aid delivery", "hostage release",
}
