// Package key describes keystrokes in Emacs notation.
//
// A keystroke is written as optional modifiers followed by a base key:
//
//	a  A  C-a  M-f  C-M-v  M-<  C-SPC
//	RET  TAB  DEL  SPC  ESC
//	<up>  <down>  <left>  <right>  <home>  <end>
//	<prior>  <next>  <insert>  <delete>  <f1> ... <f12>
//
// C is Control and M is Meta. Sequences separate keystrokes with spaces,
// as in "C-x C-x". Event.String produces the same notation, so a parsed
// event prints back to its canonical spelling.
package key
