package lisp_test

import (
	"testing"

	"github.com/opensdraw/lcad/lcadtest"
)

func TestEval(t *testing.T) {
	tests := lcadtest.TestSuite{
		{"literals", lcadtest.TestSequence{
			{"3", "3", ""},
			{"-2.5", "-2.5", ""},
			{"+7", "7", ""},
			{`"abc"`, `"abc"`, ""},
			{`"a\nb"`, `"a\nb"`, ""},
			{"()", "()", ""},
			{"t", "true", ""},
			{"true", "true", ""},
			{"false", "false", ""},
			{"nil", "nil", ""},
		}},
		{"symbols", lcadtest.TestSequence{
			{"a", "NameError: unbound symbol: a", ""},
			{"(1 2)", "TypeError: not a function: 1", ""},
			{"+", "<builtin +>", ""},
			{"if", "<special-op if>", ""},
		}},
		{"arithmetic", lcadtest.TestSequence{
			{"(+)", "0", ""},
			{"(*)", "1", ""},
			{"(+ 1 2)", "3", ""},
			{"(+ 1 2.5)", "3.5", ""},
			{"(- 3)", "-3", ""},
			{"(- 10 1 2)", "7", ""},
			{"(* 2 3 4)", "24", ""},
			{"(/ 6 3)", "2", ""},
			{"(/ 6 4)", "1.5", ""},
			{"(/ 6.0 3)", "2", ""},
			{"(% 7 3)", "1", ""},
			{"(% 7.5 2)", "1.5", ""},
			{"(% -1 3)", "2", ""},
			{"(% 1 -3)", "-2", ""},
			{"(% -7.5 2)", "0.5", ""},
			{"(/ 1 0)", "RuntimeError: /: division by zero", ""},
			{"(% 1 0)", "RuntimeError: %: division by zero", ""},
			{`(+ 1 "a")`, `TypeError: +: not a number: "a"`, ""},
			{"(/ 1)", "ArityError: /: expected at least 2 arguments, got 1", ""},
			{"(abs -3)", "3", ""},
			{"(abs -3.5)", "3.5", ""},
			{"(min 3 1 2)", "1", ""},
			{"(max 3 1.5 2)", "3", ""},
		}},
		{"vectors", lcadtest.TestSequence{
			{"(+ (vector 1 2 3) (vector 1 1 1))", "(2 3 4)", ""},
			{"(- (list 5 5) (list 1 2))", "(4 3)", ""},
			{"(- (list 1 2 3))", "(-1 -2 -3)", ""},
			{"(* 2 (list 1 2.5 3))", "(2 5 6)", ""},
			{"(/ (list 2 3) 2)", "(1 1.5)", ""},
			{"(+ (list 1 2) (list 1 2 3))", "TypeError: +: vector lengths differ: 2 and 3", ""},
			{`(+ (list 1 "a") 1)`, `TypeError: +: not a number: "a"`, ""},
			{`(+ (list 1) "a")`, `TypeError: +: not a number or vector: "a"`, ""},
			{"(/ (list 1 2) 0)", "RuntimeError: /: division by zero", ""},
			{"(vector? (vector 1 2 3))", "true", ""},
			{`(vector? (list 1 "a"))`, "false", ""},
			{"(vector? ())", "false", ""},
			{"(vector? 1)", "false", ""},
		}},
		{"comparison", lcadtest.TestSequence{
			{"(< 1 2 3)", "true", ""},
			{"(< 1 3 2)", "false", ""},
			{"(>= 3 3 1)", "true", ""},
			{"(= 1 1.0)", "true", ""},
			{"(= 1 1 2)", "false", ""},
			{"(!= 1 2)", "true", ""},
			{`(= "a" "a")`, "true", ""},
			{`(= "a" 1)`, "false", ""},
			{"(= (list 1 2) (list 1 2))", "true", ""},
			{"(= (list 1 2) (list 1 2 3))", "false", ""},
			{"(not nil)", "true", ""},
			{"(not 1)", "false", ""},
			{`(< 1 "a")`, `TypeError: <: not a number: "a"`, ""},
		}},
		{"lists", lcadtest.TestSequence{
			{"(list)", "()", ""},
			{"(list 1 2 3)", "(1 2 3)", ""},
			{"(aref (list 10 20 30) 1)", "20", ""},
			{"(aref (list 10 20 30) 3)", "RuntimeError: index out of range: 3 (length 3)", ""},
			{"(aref (list 10 20 30) -1)", "RuntimeError: index out of range: -1 (length 3)", ""},
			{"(aref (list 10 20 30) 1.0)", "TypeError: index is not an integer: 1", ""},
			{"(aref 1 0)", "TypeError: aref: not a list: 1", ""},
			{"(len (list 1 2))", "2", ""},
			{`(len "abc")`, "3", ""},
			{"(concat (list 1 2) (list 3))", "(1 2 3)", ""},
			{`(concat "a" "b")`, `"ab"`, ""},
			{`(concat "a" (list 1))`, "TypeError: concat: not a string: (1)", ""},
		}},
		{"type predicates", lcadtest.TestSequence{
			{"(number? 1)", "true", ""},
			{"(number? 1.5)", "true", ""},
			{`(string? "a")`, "true", ""},
			{"(boolean? t)", "true", ""},
			{"(list? ())", "true", ""},
			{"(function? +)", "true", ""},
			{"(function? (lambda () 1))", "true", ""},
			{"(nil? nil)", "true", ""},
			{"(nil? 0)", "false", ""},
			{`(part? (part "3001" 4))`, "true", ""},
		}},
		{"print", lcadtest.TestSequence{
			{`(print "a" 1 (list "b"))`, `"a1(\"b\")"`, "a1(\"b\")\n"},
			{"(print)", `""`, "\n"},
		}},
		{"functions", lcadtest.TestSequence{
			{"(def fact (n) (if (< n 2) 1 (* n (fact (- n 1)))))", "<function fact>", ""},
			{"(fact 10)", "3628800", ""},
			{"(def h (a b) a)", "<function h>", ""},
			{"(h 1)", "ArityError: h: expected 2 arguments, got 1", ""},
			{"(h 1 2 3)", "ArityError: h: expected 2 arguments, got 3", ""},
			{"(def one (a) a)", "<function one>", ""},
			{"(one)", "ArityError: one: expected 1 argument, got 0", ""},
			{"(def apply2 (f x) (f (f x)))", "<function apply2>", ""},
			{"(apply2 (lambda (x) (* x 3)) 2)", "18", ""},
		}},
		{"keyword arguments", lcadtest.TestSequence{
			{"(def k (a :scale 2) (* a scale))", "<function k>", ""},
			{"(k 3)", "6", ""},
			{"(k 3 :scale 10)", "30", ""},
			{"(k 3 :size 1)", "TypeError: k: unknown keyword argument: :size", ""},
			{"(k 3 :scale)", "TypeError: missing value for keyword argument :scale", ""},
			{"(k :scale 1 3)", "TypeError: positional argument follows keyword arguments", ""},
			{"(k 3 :scale 1 :scale 2)", "TypeError: duplicate keyword argument :scale", ""},
			{"(def kd (a :b (* a 2) :c) (list a b c))", "<function kd>", ""},
			{"(kd 1)", "(1 2 nil)", ""},
			{"(kd 1 :c 5)", "(1 2 5)", ""},
		}},
		{"closures", lcadtest.TestSequence{
			{"(def y 1)", "1", ""},
			{"(def g () y)", "<function g>", ""},
			{"(g)", "1", ""},
			{"(set y 2)", "2", ""},
			{"(g)", "2", ""},
			{"(def counter () (block (def n 0) (lambda () (set n (+ n 1)))))", "<function counter>", ""},
			{"(def c (counter))", "<function lambda>", ""},
			{"(c)", "1", ""},
			{"(c)", "2", ""},
			{"n", "NameError: unbound symbol: n", ""},
		}},
		{"no hoisting", lcadtest.TestSequence{
			{"(def early () (later))", "<function early>", ""},
			{"(early)", "NameError: unbound symbol: later", ""},
			{"(def later () 5)", "<function later>", ""},
			{"(early)", "5", ""},
		}},
		{"context", lcadtest.TestSequence{
			{"time-index", "0", ""},
			{"(set time-index 3)", "RuntimeError: cannot set time-index", ""},
			{"step-offset", "0", ""},
			{"(set step-offset 2)", "2", ""},
			{"step-offset", "2", ""},
			{`(set step-offset "a")`, `TypeError: step-offset must be a number or a function: "a"`, ""},
		}},
		{"multiple forms", lcadtest.TestSequence{
			{"(def a 1) (def b 2) (+ a b)", "3", ""},
			{"(def c 1) (undefined) (def d 2)", "NameError: unbound symbol: undefined", ""},
			{"c", "1", ""},
			{"d", "NameError: unbound symbol: d", ""},
		}},
		{"parse errors", lcadtest.TestSequence{
			{"(+ 1 2", "ParseError: unmatched (", ""},
			{"(+ 1 2))", "ParseError: unmatched )", ""},
			{`"abc`, "LexError: unterminated string literal", ""},
		}},
	}
	lcadtest.RunTestSuite(t, tests)
}

func TestLibrary(t *testing.T) {
	tests := lcadtest.TestSuite{
		{"math", lcadtest.TestSequence{
			{"pi", "3.141592653589793", ""},
			{"(sqrt 16)", "4", ""},
			{"(pow 2 10)", "1024", ""},
			{"(pow 2 -1)", "0.5", ""},
			{"(floor 2.7)", "2", ""},
			{"(ceil 2.1)", "3", ""},
			{"(round -2.5)", "-3", ""},
			{"(log 8 2)", "3", ""},
			{"(cos 0)", "1", ""},
			{`(sin "a")`, `TypeError: sin: argument is not a number: "a"`, ""},
		}},
		{"string", lcadtest.TestSequence{
			{`(format "{} + {} = {}" 1 2 3)`, `"1 + 2 = 3"`, ""},
			{`(format "{{}}")`, `"{}"`, ""},
			{`(format "{}" "a")`, `"a"`, ""},
			{`(format "{}")`, "RuntimeError: format: too many formatting directives for supplied values", ""},
			{`(format "x" 1)`, "RuntimeError: format: 1 values supplied for 0 formatting directives", ""},
			{`(format "{x}" 1)`, "RuntimeError: format: formatting directives must be empty", ""},
			{`(format "}")`, "RuntimeError: format: unexpected closing brace '}' outside of formatting directive", ""},
			{`(to-string 1.5)`, `"1.5"`, ""},
			{`(string-upcase "abc")`, `"ABC"`, ""},
			{`(string-join (list 1 "b" 3) ",")`, `"1,b,3"`, ""},
			{`(string-split "a,b" ",")`, `("a" "b")`, ""},
			{`(string-repeat "ab" 2)`, `"abab"`, ""},
		}},
		{"random", lcadtest.TestSequence{
			{"(def a (rand-uniform))", "0.6046602879796196", ""},
			{"(rand-seed 1)", "1", ""},
			{"(= a (rand-uniform))", "true", ""},
			{"(<= 1 (rand-integer 1 6) 6)", "true", ""},
			{"(rand-integer 6 1)", "RuntimeError: rand-integer: empty interval [6, 1]", ""},
			{"(rand-choice (list))", "RuntimeError: rand-choice: empty list", ""},
			{"(rand-uniform 1)", "ArityError: rand-uniform: expected 0 or 2 arguments, got 1", ""},
		}},
	}
	lcadtest.RunTestSuite(t, tests)
}
