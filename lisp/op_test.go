package lisp_test

import (
	"testing"

	"github.com/opensdraw/lcad/lcadtest"
)

func TestSpecialOp(t *testing.T) {
	debugstack := `Stack Trace [2 frames -- entrypoint last]:
  height 1: debug-stack at test:2:3
  height 0: f at test:3:1
`
	tests := lcadtest.TestSuite{
		{"if", lcadtest.TestSequence{
			{"(if () 1 2)", "2", ""},
			{"(if t 1 2)", "1", ""},
			{"(if nil 1 2)", "2", ""},
			{"(if 0 1 2)", "2", ""},
			{"(if 0.0 1 2)", "2", ""},
			{"(if (list 0) 1 2)", "1", ""},
			{`(if "" 1 2)`, "1", ""},
			{"(if nil 1)", "nil", ""},
			{"(def x 0)", "0", ""},
			{"(if t (set x 1) (set x 2))", "1", ""},
			{"x", "1", ""},
			{"(if nil 1 2 3)", "ArityError: if: expected 2 to 3 arguments, got 4", ""},
		}},
		{"block", lcadtest.TestSequence{
			{"(block)", "nil", ""},
			{"(def a 1)", "1", ""},
			{"(block (def a 2) a)", "2", ""},
			{"a", "1", ""},
			{"(block (set a 3) a)", "3", ""},
			{"a", "3", ""},
		}},
		{"cond", lcadtest.TestSequence{
			{`(cond ((= 1 2) "a") (else "b"))`, `"b"`, ""},
			{`(cond ((= 1 1) "a") (else "b"))`, `"a"`, ""},
			{"(cond (nil 1))", "nil", ""},
			{"(cond (5))", "5", ""},
			{"(cond)", "nil", ""},
			{"(cond 1)", "TypeError: cond: clause is not a non-empty list: 1", ""},
		}},
		{"for", lcadtest.TestSequence{
			{"(for (i 3) (print i))", `"2"`, "0\n1\n2\n"},
			{"(for (i 1 4) (print i))", `"3"`, "1\n2\n3\n"},
			{"(for (i 0 2 5) (print i))", `"4"`, "0\n2\n4\n"},
			{"(for (i 3 -1 0) (print i))", `"1"`, "3\n2\n1\n"},
			{"(for (i 0 0.5 1) (print i))", `"0.5"`, "0\n0.5\n"},
			{`(for (i (list "a" "b")) (print i))`, `"b"`, "a\nb\n"},
			{"(for (i 0) 1)", "nil", ""},
			{"(for (i 0 0 1) 1)", "RuntimeError: for: step is zero", ""},
			{`(for (i "a") 1)`, `TypeError: for: loop bound is not a number: "a"`, ""},
			{"i", "NameError: unbound symbol: i", ""},
		}},
		{"for mutating its list", lcadtest.TestSequence{
			{"(def l (list 1 2 3))", "(1 2 3)", ""},
			{"(for (x l) (set (aref l 2) 0) (print x))", `"3"`, "1\n2\n3\n"},
			{"l", "(1 2 0)", ""},
		}},
		{"while", lcadtest.TestSequence{
			{"(def n 0)", "0", ""},
			{"(while (< n 3) (set n (+ n 1)))", "3", ""},
			{"(while nil 1)", "nil", ""},
		}},
		{"def", lcadtest.TestSequence{
			{"(def x 3)", "3", ""},
			{"(def f () (+ x 1))", "<function f>", ""},
			{"(f)", "4", ""},
			{"(def a 1 b 2)", "2", ""},
			{"(+ a b)", "3", ""},
			{"(def a 1 b)", "ArityError: def: expected name/value pairs, got 3 operands", ""},
			{"(def 1 2)", "TypeError: not a symbol: 1", ""},
			{"(def list 3)", "3", "test:1:6: warning: list shadows a built-in\n"},
			{"list", "3", ""},
			{"(def time-index 5)", "RuntimeError: cannot define time-index", ""},
			{"(def step-offset () 1)", "RuntimeError: cannot define step-offset", ""},
			{"time-index", "0", ""},
		}},
		{"set", lcadtest.TestSequence{
			{"(set zz 1)", "NameError: unbound symbol: zz", ""},
			{"zz", "NameError: unbound symbol: zz", ""},
			{"(set + 1)", "RuntimeError: cannot set built-in: +", ""},
			{"(def l (list 1 2 3))", "(1 2 3)", ""},
			{"(set (aref l 0) 9)", "9", ""},
			{"l", "(9 2 3)", ""},
			{"(set (aref l 3) 9)", "RuntimeError: index out of range: 3 (length 3)", ""},
			{"(def p 1 q 2)", "2", ""},
			{"(set p 10 q 20)", "20", ""},
			{"(list p q)", "(10 20)", ""},
		}},
		{"lambda", lcadtest.TestSequence{
			{"(lambda (x) x)", "<function lambda>", ""},
			{"((lambda (x) (* x x)) 4)", "16", ""},
			{"((lambda () (+ 1 1)))", "2", ""},
			{"(lambda x x)", "TypeError: lambda: parameters are not a list: x", ""},
			{"(lambda (x x) x)", "TypeError: lambda: duplicate parameter: x", ""},
			{"(lambda (:k 1 x) x)", "TypeError: lambda: positional parameter x follows keyword parameters", ""},
		}},
		{"and or", lcadtest.TestSequence{
			{"(and)", "true", ""},
			{"(or)", "false", ""},
			{"(and 1 2)", "2", ""},
			{"(and 1 nil 2)", "nil", ""},
			{"(or nil 3)", "3", ""},
			{"(or nil 0)", "0", ""},
			{"(and nil (print 1))", "nil", ""},
			{"(or 1 (undefined))", "1", ""},
		}},
		{"debug-stack", lcadtest.TestSequence{
			{"(def f ()\n  (debug-stack))\n(f)", "nil", debugstack},
		}},
	}
	lcadtest.RunTestSuite(t, tests)
}
