package feedback

// Judge produces the feedback a well-behaved evaluator would return for
// guess against secret. Marking is two-pass: correct slots first consume
// the secret's letter counts, then each remaining guess slot is present
// while its letter still has unconsumed occurrences, absent otherwise.
// Both words must have the same length; lengths are the caller's problem.
func Judge(guess, secret string) []Record {
	recs := make([]Record, len(guess))
	var remaining [26]int

	for i := 0; i < len(secret); i++ {
		remaining[secret[i]-'a']++
	}
	for i := 0; i < len(guess); i++ {
		recs[i] = Record{Slot: i, Char: guess[i], Outcome: Absent}
		if guess[i] == secret[i] {
			recs[i].Outcome = Correct
			remaining[guess[i]-'a']--
		}
	}
	for i := 0; i < len(guess); i++ {
		if recs[i].Outcome == Correct {
			continue
		}
		if remaining[guess[i]-'a'] > 0 {
			recs[i].Outcome = Present
			remaining[guess[i]-'a']--
		}
	}
	return recs
}
