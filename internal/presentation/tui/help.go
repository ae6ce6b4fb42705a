package tui

// RPNHelp is shown by the rpn console on start and on "help".
const RPNHelp = `# RPN evaluator

Type numbers and operators separated by spaces. ` + "`=`" + ` prints the top of the stack.

| Input | Effect |
|---|---|
| ` + "`5 10 *`" + ` | pushes 5 and 10, multiplies |
| ` + "`=`" + ` | pops and prints |
| ` + "`+ - * /`" + ` | integer arithmetic, division floors |

The stack survives between lines. Type ` + "`quit`" + ` to leave.
`

// DialogHelp introduces the scripted conversation.
const DialogHelp = `# Dialog

The script ` + "`# Hello Destination Farewell`" + ` walks through a short
conversation. Answer each question on its own line.
`
