/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

/*
Package ioutils is a thin root package over a set of focused I/O
subpackages, each solving one concern needed by the coursework's
binaries:

	bufferReadCloser  - io.ReadCloser adapter over a bufio.Reader plus its origin Closer (corosort's run-file reads)
	delim             - buffered delimiter-based reads (cmd/shell's REPL)
	fileDescriptor    - cross-platform open-file-limit query/raise (chat.Server.Listen)
	mapCloser         - context-aware bulk io.Closer registry (cmd/chatserver, cmd/chatclient graceful shutdown)
	maxstdio          - Windows fallback backing fileDescriptor
	multi             - adaptive multi-writer (corosort's merge output)
	nopwritecloser    - io.WriteCloser wrapper with a no-op Close (shellexec's redirect handling)

The root package carries no code of its own; it exists only to group
these subpackages under one import path.
*/
package ioutils
